// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

/*
Package supervisor runs Foodgram's long-lived services under a suture v4 tree.

	root ("foodgram")
	├── messaging-layer
	│   └── activity event router (events.Bus)
	└── api-layer
	    ├── http-server
	    └── janitor (login throttle cleanup, DuckDB checkpoint)

A crashed service is restarted with backoff without touching its siblings
in the other layer. Supervisor events are logged through sutureslog into the
zerolog pipeline. Canceling the context passed to Serve shuts the whole tree
down within TreeConfig.ShutdownTimeout.
*/
package supervisor
