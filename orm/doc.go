/*
Package orm provides an easy to use db wrapper.

The state space is broken into prefixed sections called buckets. Each
bucket contains only one type of model, keyed by a primary key. A bucket
can register itself on a query router, so that its content is exposed
for exact key and prefix queries.
*/
package orm
