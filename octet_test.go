package octet

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/wippyai/octet/decode"
	"github.com/wippyai/octet/encode"
	"github.com/wippyai/octet/errors"
)

type ping struct {
	Seq  uint32
	Load uint8
}

func (p ping) Encode(o *encode.Output) error {
	if err := encode.Uint32(o, p.Seq); err != nil {
		return err
	}
	return encode.Uint8(o, p.Load)
}

func (p *ping) Decode(in *decode.Input) error {
	var err error
	if p.Seq, err = decode.Uint32(in); err != nil {
		return err
	}
	p.Load, err = decode.Uint8(in)
	return err
}

func (ping) MaxEncodedSize() int {
	return encode.SizeUint32 + encode.SizeUint8
}

func TestMarshalUnmarshal(t *testing.T) {
	data, err := Marshal(ping{Seq: 7, Load: 2})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := []byte{7, 0, 0, 0, 2}; !bytes.Equal(data, want) {
		t.Fatalf("Marshal = %x, want %x", data, want)
	}

	var got ping
	if err := Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != (ping{Seq: 7, Load: 2}) {
		t.Fatalf("Unmarshal = %+v", got)
	}
}

func TestUnmarshalTruncated(t *testing.T) {
	var got ping
	err := Unmarshal([]byte{7, 0}, &got)
	var ie errors.InputError
	if !stderrors.As(err, &ie) {
		t.Fatalf("err = %v, want InputError", err)
	}
}

func TestMarshalEncoderTooSmall(t *testing.T) {
	_, err := MarshalEncoder(ping{Seq: 1}, 3)
	var oe errors.OutputError
	if !stderrors.As(err, &oe) {
		t.Fatalf("err = %v, want OutputError", err)
	}
}

func TestAppend(t *testing.T) {
	dst := []byte{0xEE}
	dst, err := Append(dst, ping{Seq: 1, Load: 2}, ping{}.MaxEncodedSize())
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	dst, err = Append(dst, ping{Seq: 3, Load: 4}, ping{}.MaxEncodedSize())
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	want := []byte{0xEE, 1, 0, 0, 0, 2, 3, 0, 0, 0, 4}
	if !bytes.Equal(dst, want) {
		t.Fatalf("dst = %x, want %x", dst, want)
	}

	short, err := Append(dst, ping{Seq: 9}, 3)
	if err == nil {
		t.Fatal("Append with an undersized bound did not fail")
	}
	if !bytes.Equal(short, want) {
		t.Fatalf("failed Append changed dst: %x", short)
	}
}

func TestResultRoundTrip(t *testing.T) {
	enc := EncodeResult[uint32, string](encode.Uint32, encode.String)
	dec := DecodeResult[uint32, string](decode.Uint32, decode.String)

	tests := []struct {
		name string
		r    Result[uint32, string]
		want []byte
	}{
		{"ok", Ok[uint32, string](7), []byte{0, 7, 0, 0, 0}},
		{"err", Err[uint32, string]("bad"), []byte{1, 3, 0, 'b', 'a', 'd'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := encode.NewOutput(make([]byte, len(tt.want)))
			if err := enc(o, tt.r); err != nil {
				t.Fatalf("encode: %v", err)
			}
			if !bytes.Equal(o.Bytes(), tt.want) {
				t.Fatalf("encode = %x, want %x", o.Bytes(), tt.want)
			}

			in := decode.NewInput(tt.want)
			got, err := dec(in)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if in.Remaining() != 0 {
				t.Fatalf("decode left %d bytes", in.Remaining())
			}
			if got.IsOk() != tt.r.IsOk() {
				t.Fatalf("IsOk = %v, want %v", got.IsOk(), tt.r.IsOk())
			}
			if got.IsOk() && *got.Ok != *tt.r.Ok {
				t.Fatalf("Ok = %d, want %d", *got.Ok, *tt.r.Ok)
			}
			if got.IsErr() && *got.Err != *tt.r.Err {
				t.Fatalf("Err = %q, want %q", *got.Err, *tt.r.Err)
			}
		})
	}
}

func TestResultStates(t *testing.T) {
	enc := EncodeResult[uint32, string](encode.Uint32, encode.String)
	o := encode.NewOutput(make([]byte, 8))

	var empty Result[uint32, string]
	if err := enc(o, empty); !stderrors.Is(err, errors.VariantError{Set: 0}) {
		t.Fatalf("empty = %v", err)
	}

	both := Result[uint32, string]{Ok: new(uint32), Err: new(string)}
	if err := enc(o, both); !stderrors.Is(err, errors.VariantError{Set: 2}) {
		t.Fatalf("both = %v", err)
	}
}

func TestResultDecodeErrors(t *testing.T) {
	dec := DecodeResult[uint32, string](decode.Uint32, decode.String)

	_, err := dec(decode.NewInput(nil))
	var de errors.DiscriminantError
	if !stderrors.As(err, &de) {
		t.Fatalf("empty input = %v, want DiscriminantError", err)
	}

	_, err = dec(decode.NewInput([]byte{2}))
	if want := (errors.UnassignedDiscriminantError{Value: 2}); !stderrors.Is(err, want) {
		t.Fatalf("bad tag = %v, want %v", err, want)
	}

	_, err = dec(decode.NewInput([]byte{0, 1, 0}))
	var fe errors.FieldError
	if !stderrors.As(err, &fe) || fe.Name != "Ok" {
		t.Fatalf("short payload = %v, want field Ok", err)
	}
}

func TestResultMaxSize(t *testing.T) {
	if got := ResultMaxSize(encode.SizeUint32, encode.SizeUint16); got != 5 {
		t.Fatalf("ResultMaxSize = %d, want 5", got)
	}
}
