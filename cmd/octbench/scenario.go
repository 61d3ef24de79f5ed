package main

import (
	"github.com/wippyai/octet/decode"
	"github.com/wippyai/octet/derive"
	"github.com/wippyai/octet/encode"
	"github.com/wippyai/octet/errors"
)

// A scenario is one value shape measured by bench and decodable by inspect.
// encode and decode are the hand-written codec for value; the derived,
// gob, and json codecs operate on value and fresh directly.
type scenario struct {
	name   string
	value  any
	size   int // exact octet encoding size of value
	encode func(o *encode.Output) error
	decode func(in *decode.Input) error
	fresh  func() any
}

type glyph struct {
	Code rune `octet:"char"`
}

type header struct {
	Version uint8
	Flags   uint16
	Length  uint
	Seq     uint64
}

type point struct {
	X int32
	Y int32
}

type span struct {
	Start  point
	End    point
	Label  string
	Weight *float64
}

type ping struct {
	Seq uint32
}

type report struct {
	Level  uint8
	Detail string
}

type message struct {
	Ping   *ping
	Report *report
}

func init() {
	derive.RegisterVariant[message](
		derive.Auto("Ping"),
		derive.Auto("Report"),
	)
}

var (
	integerSample = uint64(0x0123456789ABCDEF)
	glyphSample   = glyph{Code: '⌘'}
	headerSample  = header{Version: 2, Flags: 0x0103, Length: 512, Seq: 7}
	spanWeight    = 2.5
	spanSample    = span{
		Start:  point{X: -3, Y: 4},
		End:    point{X: 118, Y: 209},
		Label:  "checkpoint-7",
		Weight: &spanWeight,
	}
	messageSample = message{Report: &report{Level: 3, Detail: "link flap on port 7"}}
)

func scenarios() []scenario {
	return []scenario{
		{
			name:  "uint64",
			value: integerSample,
			size:  encode.SizeUint64,
			encode: func(o *encode.Output) error {
				return encode.Uint64(o, integerSample)
			},
			decode: func(in *decode.Input) error {
				_, err := decode.Uint64(in)
				return err
			},
			fresh: func() any { return new(uint64) },
		},
		{
			name:  "rune",
			value: glyphSample,
			size:  encode.SizeRune,
			encode: func(o *encode.Output) error {
				return encode.Rune(o, glyphSample.Code)
			},
			decode: func(in *decode.Input) error {
				var g glyph
				var err error
				g.Code, err = decode.Rune(in)
				return err
			},
			fresh: func() any { return new(glyph) },
		},
		{
			name:  "header",
			value: headerSample,
			size:  encode.SizeUint8 + encode.SizeUint16 + encode.SizeUint + encode.SizeUint64,
			encode: func(o *encode.Output) error {
				if err := encode.Uint8(o, headerSample.Version); err != nil {
					return err
				}
				if err := encode.Uint16(o, headerSample.Flags); err != nil {
					return err
				}
				if err := encode.Uint(o, headerSample.Length); err != nil {
					return err
				}
				return encode.Uint64(o, headerSample.Seq)
			},
			decode: func(in *decode.Input) error {
				var h header
				var err error
				if h.Version, err = decode.Uint8(in); err != nil {
					return err
				}
				if h.Flags, err = decode.Uint16(in); err != nil {
					return err
				}
				if h.Length, err = decode.Uint(in); err != nil {
					return err
				}
				h.Seq, err = decode.Uint64(in)
				return err
			},
			fresh: func() any { return new(header) },
		},
		{
			name:  "span",
			value: spanSample,
			size: 4*encode.SizeInt32 + encode.SizeUint + len(spanSample.Label) +
				encode.SizeTag + encode.SizeFloat64,
			encode: func(o *encode.Output) error {
				for _, c := range [4]int32{
					spanSample.Start.X, spanSample.Start.Y,
					spanSample.End.X, spanSample.End.Y,
				} {
					if err := encode.Int32(o, c); err != nil {
						return err
					}
				}
				if err := encode.String(o, spanSample.Label); err != nil {
					return err
				}
				return encode.Option(encode.Float64)(o, spanSample.Weight)
			},
			decode: func(in *decode.Input) error {
				var s span
				var err error
				for _, dst := range [4]*int32{&s.Start.X, &s.Start.Y, &s.End.X, &s.End.Y} {
					if *dst, err = decode.Int32(in); err != nil {
						return err
					}
				}
				if s.Label, err = decode.String(in); err != nil {
					return err
				}
				s.Weight, err = decode.Option(decode.Float64)(in)
				return err
			},
			fresh: func() any { return new(span) },
		},
		{
			name:  "message",
			value: messageSample,
			size: encode.SizeInt + encode.SizeUint8 + encode.SizeUint +
				len(messageSample.Report.Detail),
			encode: func(o *encode.Output) error {
				r := messageSample.Report
				if err := encode.Int(o, 1); err != nil {
					return err
				}
				if err := encode.Uint8(o, r.Level); err != nil {
					return err
				}
				return encode.String(o, r.Detail)
			},
			decode: func(in *decode.Input) error {
				disc, err := decode.Int(in)
				if err != nil {
					return err
				}
				var m message
				switch disc {
				case 0:
					var p ping
					if p.Seq, err = decode.Uint32(in); err != nil {
						return err
					}
					m.Ping = &p
				case 1:
					var r report
					if r.Level, err = decode.Uint8(in); err != nil {
						return err
					}
					if r.Detail, err = decode.String(in); err != nil {
						return err
					}
					m.Report = &r
				default:
					return errors.UnassignedDiscriminantError{Value: int64(disc)}
				}
				return nil
			},
			fresh: func() any { return new(message) },
		},
	}
}
