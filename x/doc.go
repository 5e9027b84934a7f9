/*
Package x contains the functionality shared by the extensions: how the
caller of a transaction is authenticated. The subpackages are the
extensions themselves.
*/
package x
