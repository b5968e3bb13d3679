// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

/*
Package supervisor runs long-lived services under a suture supervisor tree.

Services that return an error are restarted with suture's failure
threshold and backoff. On context cancellation every service is asked to
stop and given ShutdownTimeout to do so; stragglers are reported by
UnstoppedServiceReport.

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)

Supervisor events (restarts, backoff, panics) go through sutureslog into
the zerolog-backed slog adapter in package logging.
*/
package supervisor
