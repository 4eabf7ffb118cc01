// Command shttpd is a small demonstration server wiring the zero-copy
// HTTP/1.x parser into a gnet event loop. It echoes back the method,
// path, and header count of every request it decodes — enough to drive
// the parser end-to-end without pulling in an application framework.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/shapestone/zc-http1/astview"
	"github.com/shapestone/zc-http1/transport"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	maxHeaderBytes := flag.Int("max-header-bytes", 8<<10, "maximum bytes allowed for the request line and headers")
	showErrorDetail := flag.Bool("show-error-detail", false, "include an escaped excerpt of the offending input in parse-error responses")
	workerPoolSize := flag.Int("worker-pool-size", 256, "number of goroutines handling decoded requests")
	multicore := flag.Bool("multicore", true, "run one event loop per CPU core")
	accessLogPath := flag.String("access-log", "", "path to a rotating access log file; empty logs to stderr")
	flag.Parse()

	cfg := transport.NewConfig(*addr)
	cfg.MaxHeaderBytes = *maxHeaderBytes
	cfg.ShowErrorDetail = *showErrorDetail
	cfg.WorkerPoolSize = *workerPoolSize
	cfg.Multicore = *multicore
	cfg.AccessLogPath = *accessLogPath

	srv, err := transport.New(cfg, transport.HandlerFunc(echoHandler))
	if err != nil {
		log.Fatalf("shttpd: %v", err)
	}

	if err := srv.Run(context.Background()); err != nil {
		log.Fatalf("shttpd: %v", err)
	}
}

func echoHandler(req astview.Request) transport.Response {
	method := req.Method
	if method == "CUSTOM" {
		method = req.CustomMethod
	}
	body := fmt.Sprintf("%s %s %s\nheaders: %d\n", method, req.Path, req.Version, len(req.Headers))
	return transport.Response{
		Status: 200,
		Headers: [][2]string{
			{"Content-Type", "text/plain"},
			{"X-Header-Count", strconv.Itoa(len(req.Headers))},
		},
		Body: []byte(body),
	}
}
