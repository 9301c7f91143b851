package overlay

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidDataURI = errors.New("invalid data URI")
)

const dataURIScheme = "data:"

// EncodeDataURI returns data as a base64 data URI of the given media type.
func EncodeDataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("%s%s;base64,%s", dataURIScheme, mimeType, base64.StdEncoding.EncodeToString(data))
}

// DecodeDataURI splits a data URI into its media type and payload. Both base64 and
// percent-encoded payloads are accepted.
func DecodeDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, dataURIScheme) {
		return "", nil, errors.Wrap(ErrInvalidDataURI, "DecodeDataURI: missing data: scheme")
	}
	header, payload, found := strings.Cut(strings.TrimPrefix(uri, dataURIScheme), ",")
	if !found {
		return "", nil, errors.Wrap(ErrInvalidDataURI, "DecodeDataURI: missing payload separator")
	}

	mimeType, isBase64 := header, false
	if strings.HasSuffix(header, ";base64") {
		mimeType, isBase64 = strings.TrimSuffix(header, ";base64"), true
	}
	if mimeType == "" {
		mimeType = "text/plain;charset=US-ASCII"
	}

	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, errors.Wrapf(ErrInvalidDataURI, "DecodeDataURI: %v", err)
		}
		return mimeType, data, nil
	}

	unescaped, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, errors.Wrapf(ErrInvalidDataURI, "DecodeDataURI: %v", err)
	}
	return mimeType, []byte(unescaped), nil
}
