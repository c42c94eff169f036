package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/rs255/rs255/metrics"
	"github.com/rs255/rs255/rs255"
)

// ErrErasurePosition is returned for an erasure outside the codeword.
var ErrErasurePosition = errors.New("erasure position out of range")

type encodeCmd struct {
	Parity  int    `short:"n" default:"32" help:"Number of parity symbols (1-254)."`
	Pad     bool   `help:"Zero-pad a short message to the message length."`
	Message string `arg:"" help:"Message bytes as hex, 0x prefix optional."`
}

func (c *encodeCmd) Run(g *globals) error {
	codec, err := newCodec(g, c.Parity)
	if err != nil {
		return err
	}
	msg, err := parseHex(c.Message)
	if err != nil {
		return fmt.Errorf("message: %w", err)
	}
	if c.Pad && len(msg) < codec.MessageLen() {
		padded := make([]byte, codec.MessageLen())
		copy(padded, msg)
		msg = padded
	}
	cw, err := codec.Encode(msg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(g.stdout, hexutil.Encode(cw))
	return err
}

type decodeCmd struct {
	Parity   int    `short:"n" default:"32" help:"Number of parity symbols (1-254)."`
	Erasures []int  `short:"e" sep:"," help:"Comma-separated erased positions (0-254)."`
	Codeword string `arg:"" help:"Received codeword as hex, 0x prefix optional."`
}

func (c *decodeCmd) Run(g *globals) error {
	codec, err := newCodec(g, c.Parity)
	if err != nil {
		return err
	}
	received, err := parseHex(c.Codeword)
	if err != nil {
		return fmt.Errorf("codeword: %w", err)
	}
	mask, err := erasureMask(c.Erasures)
	if err != nil {
		return err
	}

	res, err := codec.DecodeResult(received, mask)
	if err != nil {
		return err
	}
	g.log.Debug("decoded", "parity", c.Parity, "erasures", res.Erasures,
		"errors", res.Errors(), "positions", res.Positions)

	if _, err := fmt.Fprintln(g.stdout, hexutil.Encode(res.Codeword)); err != nil {
		return err
	}
	_, err = fmt.Fprintf(g.stdout, "corrections: %d\n", res.Corrected())
	return err
}

func newCodec(g *globals, parity int) (*rs255.Codec, error) {
	return rs255.New(parity,
		rs255.WithLogger(g.log.Module("rs255")),
		rs255.WithMetrics(metrics.NewCodecMetrics(g.registry)))
}

// parseHex decodes hex with or without a 0x prefix.
func parseHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

// erasureMask builds a decoder mask from positions. No positions gives a
// nil mask.
func erasureMask(positions []int) ([]byte, error) {
	if len(positions) == 0 {
		return nil, nil
	}
	mask := make([]byte, rs255.CodewordLen)
	for _, p := range positions {
		if p < 0 || p >= rs255.CodewordLen {
			return nil, fmt.Errorf("%w: %d not in [0, %d)",
				ErrErasurePosition, p, rs255.CodewordLen)
		}
		mask[p] = 1
	}
	return mask, nil
}
