package display

import (
	"io"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"menucode-go/types"
)

// Frame is one view on the display link.
type Frame struct {
	Seq  uint32     `cbor:"1,keyasint"`
	View types.View `cbor:"2,keyasint"`
}

var (
	linkEncMode cbor.EncMode
	linkDecMode cbor.DecMode
)

func init() {
	var err error
	linkEncMode, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsEmpty,
	}.EncMode()
	if err != nil {
		panic("display: cbor enc mode: " + err.Error())
	}
	linkDecMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		panic("display: cbor dec mode: " + err.Error())
	}
}

// Link streams views as a sequence of CBOR data items to an external
// renderer, typically over a UART. Items are self-delimiting so no extra
// framing is needed.
type Link struct {
	mu  sync.Mutex
	enc *cbor.Encoder
	seq uint32
}

func NewLink(w io.Writer) *Link {
	return &Link{enc: linkEncMode.NewEncoder(w)}
}

func (l *Link) Render(v types.View) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	return l.enc.Encode(Frame{Seq: l.seq, View: v})
}

// LinkReader is the receiving end of a Link.
type LinkReader struct {
	dec *cbor.Decoder
}

func NewLinkReader(r io.Reader) *LinkReader {
	return &LinkReader{dec: linkDecMode.NewDecoder(r)}
}

// Next blocks for the next frame. It returns io.EOF at a clean end of
// stream.
func (r *LinkReader) Next() (Frame, error) {
	var f Frame
	err := r.dec.Decode(&f)
	return f, err
}
