// Package history provides SQLite-based storage of completed runs.
//
// Every processed file leaves one row behind: its size metrics, the mode
// used, and the output size. That makes it cheap to answer "did the last
// re-export of this course get bigger?" without keeping the files around.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because the
// database is a single file under the XDG data directory, the CGO-free
// driver cross-compiles cleanly, and WAL mode gives good concurrent read
// performance for batch runs.
package history
