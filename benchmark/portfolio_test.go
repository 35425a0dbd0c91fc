package benchmark

import (
	"net/http"
	"os"
	"testing"
)

// baseURL points at a running portfolioctl server.
func baseURL() string {
	if u := os.Getenv("PORTFOLIO_URL"); u != "" {
		return u
	}
	return "http://localhost:8000"
}

func BenchmarkPublicHandlers(b *testing.B) {
	if _, err := http.Get(baseURL() + "/status"); err != nil {
		b.Skipf("no server at %s: %v", baseURL(), err)
	}

	for _, path := range []string{
		"/api/portfolio",
		"/api/portfolio?category=uncategorized",
		"/api/categories",
		"/api/featured",
	} {
		b.Run("GET "+path, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				resp, err := http.Get(baseURL() + path)
				if err != nil {
					b.Fatal(err)
				}
				_ = resp.Body.Close()
			}
		})
	}
}
