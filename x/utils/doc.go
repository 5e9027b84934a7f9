// Package utils provides decorators used by every application: panic
// recovery, logging, savepoints and result tagging.
package utils
