/*
Package chatlog implements the append-only ordered message log that clients
observe. It is the reference form of the persistence collaborator: the
cipher packages never touch it, and it never touches a password.

A Store appends records and fans them out to subscribers in append order.
Every subscriber first receives the full backlog, then live appends.
MemoryStore keeps everything in process; FileStore additionally persists
records to an append-only binary file and replays it on open, tolerating a
torn final record from an interrupted write.
*/
package chatlog
