package overlay

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/pkg/errors"
)

func TestDataURIRoundTrip(t *testing.T) {
	c := qt.New(t)
	uri := EncodeDataURI("image/png", []byte{0x89, 'P', 'N', 'G'})
	c.Assert(uri, qt.Equals, "data:image/png;base64,iVBORw==")

	mimeType, data, err := DecodeDataURI(uri)
	c.Assert(err, qt.IsNil)
	c.Assert(mimeType, qt.Equals, "image/png")
	c.Assert(data, qt.DeepEquals, []byte{0x89, 'P', 'N', 'G'})
}

func TestDecodeDataURIPercentEncoded(t *testing.T) {
	c := qt.New(t)
	mimeType, data, err := DecodeDataURI("data:,hello%20world")
	c.Assert(err, qt.IsNil)
	c.Assert(mimeType, qt.Equals, "text/plain;charset=US-ASCII")
	c.Assert(string(data), qt.Equals, "hello world")
}

func TestDecodeDataURIInvalid(t *testing.T) {
	for _, uri := range []string{
		"https://example.com/a.png",
		"data:image/png;base64",
		"data:image/png;base64,!!!",
	} {
		c := qt.New(t)
		_, _, err := DecodeDataURI(uri)
		c.Assert(errors.Is(err, ErrInvalidDataURI), qt.IsTrue, qt.Commentf("uri %q", uri))
	}
}
