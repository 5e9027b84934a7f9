/*
Package app contains the building blocks of an application: the chain of
decorators around the message router, the committed store with its
deliver and check caches, and the BaseApp that executes transactions one
at a time.
*/
package app
