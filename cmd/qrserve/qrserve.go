// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Qrserve serves QR codes over HTTP.  It is configured through
// QRGEN_* environment variables.
package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/unixdj/qrgen/internal/config"
	"github.com/unixdj/qrgen/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}
	gin.SetMode(cfg.GinMode)
	r := server.NewRouter(cfg)
	log.Printf("qrserve listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalln(err)
	}
}
