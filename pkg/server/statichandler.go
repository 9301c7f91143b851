package server

import (
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"time"

	"github.com/labstack/echo/v4"
	"go.withmatt.com/httpheaders"
)

const defaultMimeType = "application/octet-stream"

// staticFile opens the file named by the route wildcard and sets the common headers.
func staticFile(c echo.Context, root fs.FS) (fs.File, string, error) {
	urlPath := path.Clean(c.Param("*"))
	fdata, err := root.Open(urlPath)
	if err != nil {
		return nil, "", c.HTML(http.StatusNotFound, "Not Found")
	}

	st, err := fdata.Stat()
	if err != nil || st.IsDir() {
		_ = fdata.Close()
		return nil, "", c.HTML(http.StatusNotFound, "Not Found")
	}

	mimeType := mime.TypeByExtension(path.Ext(urlPath))
	if mimeType == "" {
		mimeType = defaultMimeType
	}

	c.Response().Header().Set(httpheaders.ContentLength, fmt.Sprintf("%v", st.Size()))
	c.Response().Header().Set(httpheaders.LastModified, st.ModTime().UTC().Format(time.RFC1123))
	return fdata, mimeType, nil
}

func StaticGet(root fs.FS) echo.HandlerFunc {
	return func(c echo.Context) error {
		fdata, mimeType, err := staticFile(c, root)
		if fdata == nil {
			return err
		}
		defer fdata.Close()
		return c.Stream(http.StatusOK, mimeType, fdata)
	}
}

func StaticHead(root fs.FS) echo.HandlerFunc {
	return func(c echo.Context) error {
		fdata, mimeType, err := staticFile(c, root)
		if fdata == nil {
			return err
		}
		_ = fdata.Close()
		c.Response().Header().Set(httpheaders.ContentType, mimeType)
		return c.NoContent(http.StatusOK)
	}
}
