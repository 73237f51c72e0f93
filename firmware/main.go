//go:build tinygo

//go:generate tinygo flash -target=xiao

package main

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/bmp280"
)

var (
	sensor bmp280.Device

	// Timing
	start    time.Time
	lastRead time.Time
)

func main() {
	uart.Configure(machine.UARTConfig{
		BaudRate: UART_BAUD_RATE,
	})

	if err := i2c.Configure(machine.I2CConfig{Frequency: I2C_FREQUENCY}); err != nil {
		println("# i2c:", err.Error())
	}

	sensor = bmp280.New(i2c)
	for !sensor.Connected() {
		println("# BMP280 not found")
		time.Sleep(time.Second)
	}
	sensor.Configure(bmp280.STANDBY_63MS, bmp280.FILTER_4X, bmp280.SAMPLING_2X, bmp280.SAMPLING_16X, bmp280.MODE_NORMAL)
	println("# BMP280 ready")

	start = time.Now()
	lastRead = start

	for {
		now := time.Now()
		if now.Sub(lastRead) >= SAMPLE_INTERVAL_MS*time.Millisecond {
			readPressure(now)
			lastRead = now
		}

		time.Sleep(time.Millisecond)
	}
}

func readPressure(now time.Time) {
	mpa, err := sensor.ReadPressure()
	if err != nil {
		println("# read:", err.Error())
		return
	}

	// Output format: "ticks_ms,mbar\n"
	// Example: "123456,1013.25\n"
	print(now.Sub(start).Milliseconds())
	print(",")
	printCentiMbar(mpa / 1000)
	print("\n")
}

// printCentiMbar prints a pressure given in hundredths of a millibar (1 Pa) with two decimals.
func printCentiMbar(c int32) {
	if c < 0 {
		print("-")
		c = -c
	}
	print(c / 100)
	print(".")
	frac := c % 100
	if frac < 10 {
		print("0")
	}
	print(frac)
}
