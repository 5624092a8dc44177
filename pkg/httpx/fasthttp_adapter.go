package httpx

import (
	"bytes"
	"net/http"

	"github.com/valyala/fasthttp"
)

// FastHTTPAdapter adapts a standard http.Handler into a
// fasthttp.RequestHandler by rebuilding an http.Request per call.
func FastHTTPAdapter(h http.Handler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		body := ctx.PostBody()
		req, err := http.NewRequest(string(ctx.Method()), string(ctx.RequestURI()), bytes.NewReader(body))
		if err != nil {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			return
		}
		ctx.Request.Header.VisitAll(func(k, v []byte) {
			req.Header.Add(string(k), string(v))
		})
		req.RemoteAddr = ctx.RemoteAddr().String()

		rw := &fastResponseWriter{ctx: ctx, header: make(http.Header)}
		h.ServeHTTP(rw, req)
		rw.flushHeaders()
	}
}

type fastResponseWriter struct {
	ctx     *fasthttp.RequestCtx
	header  http.Header
	status  int
	flushed bool
}

func (f *fastResponseWriter) Header() http.Header { return f.header }

func (f *fastResponseWriter) WriteHeader(status int) {
	if f.flushed {
		return
	}
	f.status = status
	f.flushHeaders()
	f.ctx.SetStatusCode(status)
}

func (f *fastResponseWriter) Write(b []byte) (int, error) {
	if f.status == 0 {
		f.WriteHeader(http.StatusOK)
	}
	return f.ctx.Write(b)
}

func (f *fastResponseWriter) flushHeaders() {
	if f.flushed {
		return
	}
	f.flushed = true
	for k, vals := range f.header {
		for _, v := range vals {
			f.ctx.Response.Header.Add(k, v)
		}
	}
}
