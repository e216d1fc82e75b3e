// Package services implements the driving port interfaces.
// Services contain the core CRAG logic - embedding with cache and
// fallback, brute-force similarity retrieval, relevance evaluation,
// corrective re-retrieval - and orchestrate calls to driven ports
// (adapters).
//
// Services are pure Go with no external dependencies beyond the
// standard library.
package services
