// Package files discovers sleep export files on disk. Source systems
// drop delimited text and workbook exports into a watched directory;
// this package finds them by extension or name pattern and orders them
// newest first.
package files
