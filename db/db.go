// Package db looks up optional track display metadata in DynamoDB, keyed
// by source filename. Lookups are best-effort: when no endpoint is
// configured the package is inert.
package db

import (
	"fmt"
	"strconv"

	"beatmark/constants"
	"beatmark/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

// GetTrackMetadatas fetches metadata for up to 10 filenames in one batch.
// An unconfigured endpoint yields an empty map, not an error.
func GetTrackMetadatas(filenames []string) (map[string]model.TrackMetadata, error) {
	res := make(map[string]model.TrackMetadata)

	endpoint := constants.GetMetadataEndpoint()
	if endpoint == "" || len(filenames) == 0 {
		return res, nil
	}
	if len(filenames) > 10 {
		return nil, fmt.Errorf("metadata batch limited to 10 filenames, got %v", len(filenames))
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(filename)},
		})
	}

	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb session: %w", err)
	}

	client := dynamodb.New(sess)
	table := constants.GetMetadataTable()
	out, err := client.BatchGetItem(&dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			table: {Keys: keys},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb batch get: %w", err)
	}

	for _, v := range out.Responses[table] {
		pk, ok := v["PK"]
		if !ok || pk.S == nil {
			continue
		}
		var m model.TrackMetadata
		if attr, ok := v["Artist"]; ok && attr.S != nil {
			m.Artist = *attr.S
		}
		if attr, ok := v["Title"]; ok && attr.S != nil {
			m.Title = *attr.S
		}
		if attr, ok := v["Release"]; ok && attr.S != nil {
			m.Release = *attr.S
		}
		if attr, ok := v["Year"]; ok && attr.N != nil {
			year, _ := strconv.ParseUint(*attr.N, 10, 32)
			m.Year = uint(year)
		}
		res[*pk.S] = m
	}

	return res, nil
}
