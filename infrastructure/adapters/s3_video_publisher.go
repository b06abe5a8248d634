package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/config"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

type s3VideoPublisher struct {
	logger   outbound.LoggerPort
	s3Svc    *s3.S3
	s3Config *config.S3Config
}

func NewS3VideoPublisher(logger outbound.LoggerPort, s3Svc *s3.S3, s3Config *config.S3Config) outbound.VideoPublisherPort {
	return &s3VideoPublisher{
		logger:   logger,
		s3Svc:    s3Svc,
		s3Config: s3Config,
	}
}

func (s *s3VideoPublisher) Publish(ctx context.Context, req outbound.PublishVideoRequest) (*outbound.PublishVideoResponse, error) {
	itemPath := s.getS3ItemPath(req)

	file, err := os.Open(req.VideoFileName)
	if err != nil {
		s.logger.Error(err, "Failed to open video file")
		return nil, err
	}

	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			s.logger.Error(err, "Failed to close video file")
			return
		}
		err = os.Remove(file.Name())
		if err != nil {
			s.logger.Error(err, "Failed to remove video file")
			return
		}
	}(file)

	putInput := &s3.PutObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(itemPath),
		Body:   file,
	}

	_, err = s.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		s.logger.Error(err, "Failed to upload video to S3")
		return nil, err
	}

	return &outbound.PublishVideoResponse{
		VideoKey:    itemPath,
		StoreRegion: s.s3Config.Region,
	}, nil
}

func (s *s3VideoPublisher) getS3ItemPath(req outbound.PublishVideoRequest) string {
	scene := req.SceneName
	if scene == "" {
		scene = filepath.Base(req.VideoFileName)
	}
	return fmt.Sprintf("animations/%s/%s.mp4", scene, uuid.NewString())
}
