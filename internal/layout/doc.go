// Package layout loads and validates the per-project layout file. The layout
// file describes how the adapter's build output maps onto serving URLs: the
// site base path, trailing-slash policy, fallback document, SPA mode, and the
// glob patterns selecting which artifacts are precached.
//
// # Layout Format
//
// Layout files can be written in YAML or JSON:
//
//	base: /
//	app_dir: _app
//	trailing_slash: always
//	fallback: 404.html
//	spa:
//	  enabled: true
//	  fallback_mapping: /offline
//	webmanifest: manifest.webmanifest
//	patterns:
//	  - "client/**/*.{js,css,png,svg}"
//	ignores:
//	  - "server/*.*"
//
// Omitted pattern sets fall back to the glob policy baselines; supplied sets
// are merged with them, never replaced.
package layout
