// Package weavetest provides mocks and helpers for testing handlers,
// decorators and applications.
package weavetest
