package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/robotalks/vxclone/pkg/framework"
	"github.com/robotalks/vxclone/pkg/monitor"
)

var (
	mqttURL = "mqtt://localhost:1883/vxclone/"
)

func init() {
	if val := os.Getenv("VXCLONE_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := monitor.NewQueueFromURL(mqttURL, monitor.ClientID("mon-"+monitor.HostID()))
	if err != nil {
		log.Fatalln(err)
	}
	if err := q.Connect(); err != nil {
		log.Fatalln(err)
	}
	defer q.Close()

	if _, err := monitor.Watch(q, func(ev monitor.Event) {
		log.Println(ev.String())
	}); err != nil {
		log.Fatalln(err)
	}

	ctx, stop := framework.HandleSignals(context.Background())
	defer stop()
	<-ctx.Done()
}
