// Package main is the entry point of ADCU Admin, the role based administrative
// web front-end of the ADCU contract and document management backend. The
// front-end renders pages with fiber, keeps sessions in redis, mysql or
// postgres and asks the backend REST API for every record it shows.
package main
