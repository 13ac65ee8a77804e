// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

/*
Package metrics holds the Prometheus collectors served at /metrics.

Everything is registered on the default registry through promauto under the
foodgram namespace:

  - foodgram_db_*: store call latency and failures by error class
  - foodgram_http_*: request counts, latency, in-flight requests and rate limiting
  - foodgram_login_attempts_total: token login outcomes
  - foodgram_shopping_list_*: downloads and list sizes
  - foodgram_activity_*: activity bus traffic
  - foodgram_media_images_stored_total: recipe image uploads
  - foodgram_build_info: running version
*/
package metrics
