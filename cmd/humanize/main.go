// Humanize rewrites text through a configured text-generation provider.
//
// Usage:
//
//	# Serve POST /api/humanize on the configured port
//	humanize serve --config config.yaml
//
//	# Develop without a provider credential
//	humanize serve --mock
//
//	# Rewrite once from the command line or stdin
//	humanize rewrite --text "some text"
//	cat draft.txt | humanize rewrite
package main

func main() {
	Execute()
}
