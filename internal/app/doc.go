// Package app wires the pieces of the tool together: it loads the
// optional settings file, discovers report files under the input path,
// parses each one and writes the flattened CSV tables.
package app
