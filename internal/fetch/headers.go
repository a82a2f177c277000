package fetch

// ScholarUserAgent is a desktop Chrome user agent. Scholar serves a reduced
// page or a block page to unrecognized clients.
const ScholarUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// BrowserHeaders returns the request headers a desktop browser sends for a page load.
// Accept-Encoding is left to the transport so gzip bodies are decoded.
func BrowserHeaders() map[string]string {
	return map[string]string{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.5",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
	}
}
