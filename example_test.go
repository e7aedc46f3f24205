package pbf_test

import (
	"fmt"
	"log"

	"github.com/anirudhraja/pbf"
	"github.com/anirudhraja/pbf/wire"
)

type Place struct {
	Name string
	Lat  float64
	Lon  float64
	Tags []uint64
}

func writePlace(p *Place, c *wire.Cursor) error {
	c.WriteStringField(1, p.Name)
	c.WriteDoubleField(2, p.Lat)
	c.WriteDoubleField(3, p.Lon)
	c.WritePackedVarint(4, p.Tags)
	return nil
}

func readPlace(field wire.FieldNumber, p *Place, c *wire.Cursor) (err error) {
	switch field {
	case 1:
		p.Name, err = c.ReadString()
	case 2:
		p.Lat, err = c.ReadDouble()
	case 3:
		p.Lon, err = c.ReadDouble()
	case 4:
		p.Tags, err = c.ReadPackedVarint(p.Tags)
	}
	return err
}

func ExampleMarshal() {
	data, err := pbf.Marshal(&Place{Name: "Kyiv", Lat: 50.45, Lon: 30.52, Tags: []uint64{1, 300}}, writePlace)
	if err != nil {
		log.Fatal(err)
	}

	p, err := pbf.Unmarshal(data, readPlace, &Place{})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%d bytes: %s %.2f %.2f %v\n", len(data), p.Name, p.Lat, p.Lon, p.Tags)
	// Output: 29 bytes: Kyiv 50.45 30.52 [1 300]
}

func ExampleParse() {
	c := wire.NewBuffer(0)
	c.WriteVarintField(1, 123)
	c.WriteStringField(2, "hello")

	result, err := pbf.Parse(c.Finish())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(result["field_1"])
	fmt.Println(result["field_2"])
	// Output:
	// map[type:varint value:123]
	// map[type:bytes value:[104 101 108 108 111]]
}
