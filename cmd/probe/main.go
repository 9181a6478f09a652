package main

import (
	"fmt"
	"log"
	"time"

	"github.com/steenkjaerulf/nrf24l01"
)

var address = []byte{0xE7, 0xE7, 0xE7, 0xE7, 0xE7}

func main() {
	r, err := nrf24l01.Open(76, 0)
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()
	if err := r.Configure(); err != nil {
		log.Fatal(err)
	}
	status, err := r.GetStatus()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("device: %s\n", r.Device())
	fmt.Printf("status: %v\n", status)

	if err := r.SetTransmitAddress(address); err != nil {
		log.Fatal(err)
	}
	addr, err := r.TransmitAddress()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("TX address: % X\n", addr)

	if err := r.Send([]byte("probe")); err != nil {
		log.Fatal(err)
	}
	for {
		sending, err := r.Sending()
		if err != nil {
			log.Fatal(err)
		}
		if !sending {
			break
		}
		time.Sleep(time.Millisecond)
	}
	fmt.Printf("statistics: %+v\n", r.Statistics())
}
