package main

import "testing"

func TestParseTunnelDims(t *testing.T) {
	tun, err := parseTunnelDims("20,10,8")
	if err != nil {
		t.Fatalf("parseTunnelDims: %v", err)
	}
	if tun.Length != 20 || tun.Width != 10 || tun.Height != 8 {
		t.Errorf("got (%v, %v, %v), want (20, 10, 8)", tun.Length, tun.Width, tun.Height)
	}

	if _, err := parseTunnelDims(" 12, 6 , 4 "); err != nil {
		t.Errorf("whitespace dims rejected: %v", err)
	}

	for _, bad := range []string{"", "20,10", "20,10,8,4", "a,b,c", "0,10,8"} {
		if _, err := parseTunnelDims(bad); err == nil {
			t.Errorf("parseTunnelDims(%q) accepted", bad)
		}
	}
}
