package adapters

import (
	"context"
	"time"

	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/config"
	"github.com/DJRGVC/Noter/domain"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

type dynamoStudySetItem struct {
	SetId     string `dynamodbav:"set_id"`
	Title     string `dynamodbav:"title"`
	Kind      string `dynamodbav:"kind"`
	ItemCount int    `dynamodbav:"item_count"`
	Payload   string `dynamodbav:"payload"`
	TTL       int64  `dynamodbav:"ttl"`
}

type dynamoStudyCache struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

func NewDynamoStudyCache(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB, dynamoConfig *config.DynamoConfig) outbound.StudySetCachePort {
	return &dynamoStudyCache{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

func (c *dynamoStudyCache) Save(ctx context.Context, set domain.StudySet) error {
	item := dynamoStudySetItem{
		SetId:     set.ID,
		Title:     set.Title,
		Kind:      string(set.Kind),
		ItemCount: set.ItemCount,
		Payload:   set.Payload,
		TTL:       time.Now().Add(time.Duration(c.dynamoConfig.TtlMinutes) * time.Minute).Unix(),
	}
	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to marshal study set item", map[string]interface{}{
			"set_id": set.ID,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(c.dynamoConfig.TableName),
	}

	_, err = c.dynamoSvc.PutItemWithContext(ctx, input)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to save study set item", map[string]interface{}{
			"set_id": set.ID,
		})
		return err
	}

	return nil
}
