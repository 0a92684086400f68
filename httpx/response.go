package httpx

import (
	"bytes"
	"net/http"
)

// ResponseBuffer captures a handler's response so a caller can inspect the
// status before deciding whether to forward it to the real writer.
type ResponseBuffer interface {
	http.ResponseWriter
	Status() int
	Body() []byte
	Flush(w http.ResponseWriter) error
}

func NewResponseBuffer() ResponseBuffer {
	return &responseBuffer{header: http.Header{}}
}

type responseBuffer struct {
	status int
	header http.Header
	body   bytes.Buffer
}

func (buf *responseBuffer) Status() int {
	return buf.status
}

func (buf *responseBuffer) Header() http.Header {
	return buf.header
}

func (buf *responseBuffer) Body() []byte {
	return buf.body.Bytes()
}

func (buf *responseBuffer) Write(body []byte) (int, error) {
	return buf.body.Write(body)
}

func (buf *responseBuffer) WriteHeader(statusCode int) {
	buf.status = statusCode
}

func (buf *responseBuffer) Flush(w http.ResponseWriter) error {
	header := w.Header()
	for key, value := range buf.header {
		header[key] = value
	}
	if buf.status != 0 {
		w.WriteHeader(buf.status)
	}
	if buf.body.Len() > 0 {
		_, err := w.Write(buf.body.Bytes())
		return err
	}
	return nil
}
