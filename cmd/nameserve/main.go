/*
Nameserve resolves free-text human names against a workspace member
directory.

It maintains a cached, multi-key index of the directory (full names,
individual name tokens, "first last" pairs, initials) and answers three
kinds of queries: exact-or-fuzzy resolution of a name to a member id,
ranked autocomplete suggestions for partial input, and an explicit
directory refresh.

Run the HTTP service:

	nameserve serve --config config.toml

Pull the directory from the remote API and store a local snapshot:

	nameserve fetch -o workspace_members.json

One-shot queries against the configured snapshot:

	nameserve resolve "Dinesh"
	nameserve suggest "Di" -l 10

Configuration is TOML; see pkg/config for the format and defaults. The
remote API token is read from the environment variable named by
source.token_env and is never stored in the config file.
*/
package main

import "github.com/anupamr/nameserve/internal/cli"

func main() {
	cli.Execute()
}
