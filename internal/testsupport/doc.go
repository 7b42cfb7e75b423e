// Package testsupport provides builders shared by package tests: temp-dir
// configs, store openers with cleanup, and fixture file writers.
package testsupport
