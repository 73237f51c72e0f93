//go:build tinygo

package main

import "machine"

const (
	// Sampling configuration
	SAMPLE_INTERVAL_MS = 16 // Pressure read interval in milliseconds (~64 Hz, the host's fastest rate)

	// BMP280 on the board's default I2C pins
	I2C_FREQUENCY = 400 * machine.KHz

	// Serial configuration
	// Format "ticks_ms,mbar\n", e.g. "4294967295,1013.25\n" = 19 bytes max per line.
	// 64 lines/sec * 19 bytes = 1,216 bytes/sec; UART 8N1 needs 12,160 baud.
	// 115200 leaves ~9x headroom.
	UART_BAUD_RATE = 115200
)

var (
	i2c  = machine.I2C0
	uart = machine.UART0
)
