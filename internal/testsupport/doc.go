// Package testsupport holds fixtures shared by package tests: temp-dir
// configs, CSV writers, and small deterministic spectral references.
package testsupport
