// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

/*
Package services adapts components to the suture v4 service model.

HTTPServerService translates http.Server's blocking ListenAndServe into
suture's context-aware Serve:

	server := services.NewHTTPServer(services.ServerOptions{
	    Host:           cfg.Server.Host,
	    Port:           cfg.Server.Port,
	    RequestTimeout: cfg.Server.Timeout,
	}, router)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

A bind failure is returned as an error so the supervisor backs off and
retries. Cancelling the tree's context triggers a graceful Shutdown.
*/
package services
