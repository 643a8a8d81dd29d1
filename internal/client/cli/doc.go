// Package cli implements the interactive PostGuard terminal client.
//
// The REPL accepts:
//
//	register   create an account
//	login      open a session
//	post       submit a post for moderation
//	history    list accepted posts as "timestamp - text"
//	profile    show counters and badges
//	stats      sentiment distribution as a bar chart
//	export     upload the history and print a download link
//	logout     close the session
//	exit       leave the program
//
// All user-facing wording lives in this package; the server only reports
// outcomes and error codes.
package cli
