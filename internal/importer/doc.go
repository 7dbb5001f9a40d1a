// Package importer walks an input tree, finds film stock folders by their red
// density curve marker, and writes one JSON profile per stock into the output
// directory.
//
// A run is exclusive per state directory (file lock), strictly sequential, and
// deterministic: unchanged input produces byte-identical output. Folders that
// lack red sensitometry are skipped; per-folder failures are recorded in the
// run summary and never abort the run.
package importer
