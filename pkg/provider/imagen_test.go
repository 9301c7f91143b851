package provider

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

func imagenServer(c *qt.C, status int, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.Check(r.URL.Path, qt.Equals, "/models/imagen-test:predict")
		c.Check(r.Header.Get("x-goog-api-key"), qt.Equals, "secret")

		var req predictRequest
		c.Check(json.NewDecoder(r.Body).Decode(&req), qt.IsNil)
		c.Check(req.Instances, qt.HasLen, 1)
		c.Check(req.Instances[0].Prompt, qt.Contains, "neon diyas")
		c.Check(req.Instances[0].Prompt, qt.Contains, "no text")
		c.Check(req.Parameters.AspectRatio, qt.Equals, "16:9")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	c.Cleanup(srv.Close)
	return srv
}

func newTestImagen(c *qt.C, endpoint string) *Imagen {
	im, err := NewImagen(&Config{
		APIKey:      "secret",
		Endpoint:    endpoint + "/",
		ImageModel:  "imagen-test",
		AspectRatio: "16:9",
	}, resty.New())
	c.Assert(err, qt.IsNil)
	return im
}

func TestImagenGenerateImage(t *testing.T) {
	c := qt.New(t)
	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	srv := imagenServer(c, http.StatusOK, `{"predictions":[{"bytesBase64Encoded":"`+payload+`","mimeType":"image/png"}]}`)

	img, err := newTestImagen(c, srv.URL).GenerateImage(context.Background(), "neon diyas")
	c.Assert(err, qt.IsNil)
	c.Assert(img.MimeType, qt.Equals, "image/png")
	c.Assert(string(img.Data), qt.Equals, "png-bytes")
}

func TestImagenNoImage(t *testing.T) {
	c := qt.New(t)
	srv := imagenServer(c, http.StatusOK, `{"predictions":[]}`)
	_, err := newTestImagen(c, srv.URL).GenerateImage(context.Background(), "neon diyas")
	c.Assert(errors.Is(err, ErrNoImage), qt.IsTrue)
}

func TestImagenErrors(t *testing.T) {
	c := qt.New(t)
	srv := imagenServer(c, http.StatusForbidden, `{"error":{"code":403,"message":"permission denied","status":"PERMISSION_DENIED"}}`)
	_, err := newTestImagen(c, srv.URL).GenerateImage(context.Background(), "neon diyas")
	c.Assert(errors.Is(err, ErrAuthentication), qt.IsTrue)
	c.Assert(err, qt.ErrorMatches, ".*permission denied.*")

	srv = imagenServer(c, http.StatusInternalServerError, `{"error":{"code":500,"message":"internal"}}`)
	_, err = newTestImagen(c, srv.URL).GenerateImage(context.Background(), "neon diyas")
	c.Assert(errors.Is(err, ErrProvider), qt.IsTrue)

	srv = imagenServer(c, http.StatusOK, `{"predictions":[{"bytesBase64Encoded":"%%%"}]}`)
	_, err = newTestImagen(c, srv.URL).GenerateImage(context.Background(), "neon diyas")
	c.Assert(errors.Is(err, ErrMalformedResponse), qt.IsTrue)
}
