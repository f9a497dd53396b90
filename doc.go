// Package logging provisions the process-wide rolling file sink used by the
// pegasus storage client, on top of rs/zerolog.
//
// The sink is built lazily on the first GetLogger call and exactly once per
// Registry, however many goroutines race for it. If the host already holds a
// destination under the sink's name that destination is reused instead of a
// new one being created. The rolling file rotates once it reaches the size
// threshold and prunes rotated siblings that match the deletion pattern:
// a file goes when it is past the retention age and more than MinFiles
// remain, or when more than MaxFiles remain.
//
// Handles enrich Err/AnErr fields with the full error chain (outermost ->
// root), the root cause, a joined history and, for Station-Manager
// DetailedError links, the operations chain.
//
// Typical usage
//
//	log, err := logging.GetLogger("pegasus.client")
//	if err != nil { return err }
//	log.InfoWith().Str("table", name).Msg("table opened")
//
// Embedding applications that want different settings install a factory
// before the client library asks for loggers:
//
//	cfg, err := logging.LoadConfig("pegasus.properties")
//	if err != nil { return err }
//	if _, err := logging.Install(cfg, nil); err != nil { return err }
package logging
