package printer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidHost(t *testing.T) {
	tests := []struct {
		name string
		host string
		want bool
	}{
		{name: "localhost literal", host: "localhost", want: true},
		{name: "private ipv4", host: "192.168.1.50", want: true},
		{name: "public ipv4", host: "8.8.8.8", want: true},
		{name: "loopback", host: "127.0.0.1", want: true},
		{name: "hostname", host: "printer.local", want: false},
		{name: "ipv6", host: "::1", want: false},
		{name: "short form rejected", host: "10.1", want: false},
		{name: "out of range octet", host: "192.168.1.300", want: false},
		{name: "trailing garbage", host: "192.168.1.50x", want: false},
		{name: "empty", host: "", want: false},
		{name: "embedded whitespace", host: "192.168.1.50 ", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidHost(tt.host))
		})
	}
}

func TestLocalHost(t *testing.T) {
	tests := []struct {
		name string
		host string
		want bool
	}{
		{name: "localhost literal", host: "localhost", want: true},
		{name: "loopback", host: "127.0.0.1", want: true},
		{name: "class C private", host: "192.168.1.50", want: true},
		{name: "class A private", host: "10.0.0.7", want: true},
		{name: "172.16 private", host: "172.16.4.2", want: true},
		{name: "public address", host: "8.8.8.8", want: false},
		{name: "172.17 outside allow-list", host: "172.17.0.1", want: false},
		{name: "192.167 not private", host: "192.167.0.1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LocalHost(tt.host))
		})
	}
}

func TestValidPort(t *testing.T) {
	assert.True(t, ValidPort(1))
	assert.True(t, ValidPort(9100))
	assert.True(t, ValidPort(65535))
	assert.False(t, ValidPort(0))
	assert.False(t, ValidPort(-1))
	assert.False(t, ValidPort(65536))
}
