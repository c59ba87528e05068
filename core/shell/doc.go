// Package shell implements mash's command loop: it parses input lines,
// runs the cd builtin in-process and launches everything else as a
// foreground child process.
package shell
