// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server implements an HTTP service that renders QR codes.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"

	"github.com/unixdj/qrgen"
	"github.com/unixdj/qrgen/internal/config"
	"github.com/unixdj/qrgen/split"
)

var (
	errTooLarge = errors.New("request data too large")
	errFormat   = errors.New("invalid format")
	errSize     = errors.New("invalid image size")
)

type handler struct {
	cfg *config.Config
}

// NewRouter returns the service routes.  The caller sets the gin mode.
func NewRouter(cfg *config.Config) *gin.Engine {
	h := &handler{cfg: cfg}
	r := gin.New()
	r.Use(Logger(), gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/qr", h.getQR)
	r.POST("/qr", h.postQR)
	r.GET("/segments", h.segments)
	return r
}

func (h *handler) getQR(c *gin.Context) {
	text := c.Query("text")
	if int64(len(text)) > h.cfg.MaxData {
		fail(c, errTooLarge)
		return
	}
	level, err := parseLevel(c.Query("ecc"))
	if err != nil {
		fail(c, err)
		return
	}
	code, err := qrgen.Encode(text, level)
	if err != nil {
		fail(c, err)
		return
	}
	h.render(c, code)
}

func (h *handler) postQR(c *gin.Context) {
	level, err := parseLevel(c.Query("ecc"))
	if err != nil {
		fail(c, err)
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxData))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			err = errTooLarge
		}
		fail(c, err)
		return
	}
	code, err := qrgen.EncodeData(data, level)
	if err != nil {
		fail(c, err)
		return
	}
	h.render(c, code)
}

type codeJSON struct {
	Version int      `json:"version"`
	Level   string   `json:"level"`
	Mask    int      `json:"mask"`
	Size    int      `json:"size"`
	Matrix  []string `json:"matrix"` // rows, '1' for black
}

func (h *handler) render(c *gin.Context, code *qrgen.Code) {
	format := c.DefaultQuery("format", "png")
	size := h.cfg.DefaultSize
	if s := c.Query("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > h.cfg.MaxSize {
			fail(c, fmt.Errorf("%w %q", errSize, s))
			return
		}
		size = n
	}

	var (
		body  []byte
		ctype string
		err   error
	)
	switch format {
	case "png":
		ctype = "image/png"
		body, err = code.PNG(size)
	case "svg":
		ctype = "image/svg+xml"
		var s string
		s, err = code.SVG(size, c.DefaultQuery("desc", qrgen.Description))
		body = []byte(s)
	case "pgm":
		ctype = "image/x-portable-graymap"
		var buf bytes.Buffer
		err = code.EncodePGM(&buf, size)
		body = buf.Bytes()
	case "json":
		ctype = "application/json; charset=utf-8"
		v := codeJSON{
			Version: int(code.Version),
			Level:   code.Level.String(),
			Mask:    code.Mask,
			Size:    code.Size,
			Matrix:  make([]string, code.Size),
		}
		row := make([]byte, code.Size)
		for y := range v.Matrix {
			for x := range row {
				row[x] = '0'
				if code.Black(x, y) {
					row[x] = '1'
				}
			}
			v.Matrix[y] = string(row)
		}
		body, err = json.Marshal(v)
	default:
		err = fmt.Errorf("%w %q", errFormat, format)
	}
	if err != nil {
		fail(c, err)
		return
	}
	send(c, ctype, body)
}

type segmentJSON struct {
	Mode string `json:"mode"`
	Text string `json:"text"`
}

func (h *handler) segments(c *gin.Context) {
	text := c.Query("text")
	if int64(len(text)) > h.cfg.MaxData {
		fail(c, errTooLarge)
		return
	}
	level, err := parseLevel(c.Query("ecc"))
	if err != nil {
		fail(c, err)
		return
	}
	segs, v, err := split.Split(text, level)
	if err != nil {
		fail(c, err)
		return
	}
	bits, _ := split.TotalBits(segs, v)
	out := struct {
		Version  int           `json:"version"`
		Bits     int           `json:"bits"`
		Segments []segmentJSON `json:"segments"`
	}{int(v), bits, make([]segmentJSON, len(segs))}
	for i, s := range segs {
		out.Segments[i] = segmentJSON{s.Mode.String(), s.Text}
	}
	body, err := json.Marshal(out)
	if err != nil {
		fail(c, err)
		return
	}
	send(c, "application/json; charset=utf-8", body)
}

// parseLevel parses one of l, m, q or h, either case.  Empty means L.
func parseLevel(s string) (qrgen.Level, error) {
	if s == "" {
		return qrgen.L, nil
	}
	if len(s) == 1 {
		if i := strings.IndexByte("lmqhLMQH", s[0]); i >= 0 {
			return qrgen.Level(i & 3), nil
		}
	}
	return 0, fmt.Errorf("%w %q", qrgen.ErrLevel, s)
}

// send writes body with an ETag, or 304 if the client has it.
func send(c *gin.Context, ctype string, body []byte) {
	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
	c.Header("ETag", etag)
	if etagMatch(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, ctype, body)
}

func etagMatch(header, etag string) bool {
	for _, t := range strings.Split(header, ",") {
		t = strings.TrimPrefix(strings.TrimSpace(t), "W/")
		if t == etag || t == "*" {
			return true
		}
	}
	return false
}

func status(err error) int {
	switch {
	case errors.Is(err, qrgen.ErrDataTooLong), errors.Is(err, errTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, qrgen.ErrLevel),
		errors.Is(err, qrgen.ErrImageSizeTooSmall),
		errors.Is(err, qrgen.ErrLargeImage),
		errors.Is(err, errFormat),
		errors.Is(err, errSize):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func fail(c *gin.Context, err error) {
	c.Error(err)
	c.AbortWithStatusJSON(status(err), gin.H{"error": err.Error()})
}
