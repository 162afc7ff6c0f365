// Package vector provides the owned Vector type and the Dot product, the
// unit of work a pool worker performs for one output cell.
package vector
