// Package framework provides process level helpers shared by the commands:
// signal handling and running blocking work that is released by closing a
// resource when its context is canceled.
package framework
