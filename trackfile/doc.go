// Package trackfile loads redaction track files.
//
// A track file is line-oriented text: one record per line, comment lines
// starting with '#', blank lines ignored. Video records carry seven
// comma-separated fields (start,end,left,right,top,bottom,method) and
// audio records three (start,end,method). An optional "seed <uint>" line
// anywhere in the file sets the noise stream seed for the session.
//
// Malformed records are reported and skipped so one bad line never sinks
// a session; a malformed seed line is a configuration error and aborts
// loading, since silently falling back to the default seed would change
// every random draw in the output.
package trackfile
