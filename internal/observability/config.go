package observability

// Config holds opt-in diagnostics toggles for the editor service.
// EnablePprofTrace mounts the pprof handlers on the HTTP mux; it is
// off unless ENABLE_PPROF_TRACE is set.
type Config struct {
	EnablePprofTrace bool
}
