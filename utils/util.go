package utils

import "strings"

// SpoofedUserAgent is the browser identity presented on every outgoing
// request.
const SpoofedUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func Filter[A any](arr []A, f func(A) bool) []A {
	var res []A
	res = make([]A, 0)
	for _, v := range arr {
		if f(v) {
			res = append(res, v)
		}
	}
	return res
}

var htmlMarkers = []string{
	"<!doctype html",
	"<html",
	"<head",
	"<body",
}

// IsValidHTML reports whether the body looks like an HTML document.
// Challenge pages and transport errors often come back as JSON or plain
// text; those must never be cached as documents.
func IsValidHTML(s string) bool {
	ls := strings.ToLower(s)
	for _, marker := range htmlMarkers {
		if strings.Contains(ls, marker) {
			return true
		}
	}
	return false
}
