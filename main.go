package main

import "github.com/datastax/cassandra-datatables/cmd"

func main() {
	cmd.Execute()
}
