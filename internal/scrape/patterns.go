// Package scrape provides the text-mining toolkit shared by the source
// adapters: prioritized regex matchers that pull iOS SDK versions out of
// release-note prose, and HTML traversal helpers built on x/net/html.
package scrape

import (
	"regexp"
	"strings"

	"github.com/sdkmap/sdkmap/pkg/version"
)

// sdkPatterns are the recognized phrasings for "this Xcode ships iOS SDK X".
// They are tried strictly in order and the first match wins, so more precise
// phrasings must stay ahead of looser ones.
var sdkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\biOS\s+(\d+(?:\.\d+)?)\s+SDK`),
	regexp.MustCompile(`(?i)\biOS\s+SDK\s+(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)SDKs?\s+for\s+iOS\s+(?:/\s*iPadOS\s+)?(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)includes?\s+the\s+iOS\s+(\d+(?:\.\d+)?)\s+SDK`),
	regexp.MustCompile(`(?i)includes?\s+SDKs?\s+for\s+iOS\s+(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)adds?\s+support\s+for\s+(?:developing\s+apps?\s+with\s+)?iOS\s+(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)iOS\s+\((\d+(?:\.\d+)?)\)\s+SDK`),
	regexp.MustCompile(`(?i)(?:shipped|released)\s+with\s+iOS\s+(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)iOS\s+(\d+(?:\.\d+)?)\s+and\s+(?:OS\s+X|macOS)`),
}

// strictSDKPatterns is the tighter matcher list used for the Wikipedia main
// article, where general prose produces too many false positives.
var strictSDKPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\biOS\s+(\d+(?:\.\d+)?)\s+SDK`),
	regexp.MustCompile(`(?i)\biOS\s+SDK\s+(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)SDKs?\s+for\s+iOS\s+(?:/\s*iPadOS\s+)?(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)includes?\s+the\s+iOS\s+(\d+(?:\.\d+)?)\s+SDK`),
	regexp.MustCompile(`(?i)includes?\s+SDKs?\s+for\s+iOS\s+(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)shipped\s+with\s+iOS\s+(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)released\s+with\s+iOS\s+(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)\biOS\s+(\d+(?:\.\d+)?)\s+and\s+Xcode`),
}

// coMentionPattern is the fallback for sentences that mention an iOS version
// alongside Xcode without SDK phrasing, e.g. "iOS 7 and Xcode 5".
var coMentionPattern = regexp.MustCompile(`(?i)\biOS\s+(\d+(?:\.\d+)?)\s+and\s+Xcode`)

// xcodeVersionPattern matches Xcode version mentions like "Xcode 15.2".
var xcodeVersionPattern = regexp.MustCompile(`(?i)\bXcode\s+(\d+(?:\.\d+)*)`)

// sentencePattern splits prose into sentences at period boundaries.
var sentencePattern = regexp.MustCompile(`\.(?:\s|\n)+`)

// citationPattern matches Wikipedia footnote markers like [12].
var citationPattern = regexp.MustCompile(`\[\d+\]`)

// firstMatch runs matchers in order and returns the first captured version
// that passes the SDK validity filter.
func firstMatch(patterns []*regexp.Regexp, text string) (string, bool) {
	for _, pat := range patterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		sdk := version.Normalize(m[1])
		if version.ValidSDK(sdk) {
			return sdk, true
		}
	}
	return "", false
}

// FirstSDK extracts the first plausible iOS SDK version from text using the
// full matcher list.
func FirstSDK(text string) (string, bool) {
	return firstMatch(sdkPatterns, text)
}

// FirstSDKStrict extracts an iOS SDK version using only the strict matcher
// list.
func FirstSDKStrict(text string) (string, bool) {
	return firstMatch(strictSDKPatterns, text)
}

// CoMentionedSDK extracts an iOS version co-mentioned with Xcode in a
// sentence that carries no SDK phrasing.
func CoMentionedSDK(text string) (string, bool) {
	m := coMentionPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	sdk := version.Normalize(m[1])
	if !version.ValidSDK(sdk) {
		return "", false
	}
	return sdk, true
}

// XcodeVersions returns all normalized Xcode version mentions in text.
func XcodeVersions(text string) []string {
	var out []string
	for _, m := range xcodeVersionPattern.FindAllStringSubmatch(text, -1) {
		out = append(out, version.Normalize(m[1]))
	}
	return out
}

// FirstXcodeVersion returns the first Xcode version mention in text, raw
// (not normalized), so callers can distinguish "9" from "9.0" mentions.
func FirstXcodeVersion(text string) (string, bool) {
	m := xcodeVersionPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Sentences splits prose into sentences at period boundaries.
func Sentences(text string) []string {
	return sentencePattern.Split(text, -1)
}

// StripCitations removes Wikipedia-style footnote markers from text.
func StripCitations(text string) string {
	return citationPattern.ReplaceAllString(text, "")
}

// CollapseSpace normalizes runs of whitespace to single spaces and trims.
func CollapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
