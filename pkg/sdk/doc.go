// Package claimdex provides an embedded Go client for the claimdex
// insurance record index backed by Redis with the search module.
//
// The client connects straight to the database and wires the same
// services the HTTP API runs on, so a Go program can manage policies,
// claims and documents without deploying the server:
//
//	client, _ := claimdex.New(ctx,
//	    claimdex.WithRedis("localhost:6379", ""),
//	    claimdex.WithUser("user-1"),
//	)
//	defer client.Close()
//
//	policy, _ := client.Policies().Create(ctx, claimdex.PolicyInput{
//	    Number:        "POL-2024-001",
//	    Provider:      "Acme Insurance",
//	    InsuranceType: claimdex.InsuranceHome,
//	})
//	page, _ := client.Search().Query(ctx, "approved water damage", nil, 1, 20)
//
// All operations are scoped to the user given via WithUser; records owned
// by other users are invisible.
package claimdex
