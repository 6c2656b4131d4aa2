package storage

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/spf13/viper"
)

func newSession() (*session.Session, error) {
	return session.NewSession(&aws.Config{
		Region: aws.String(viper.GetString("AWS_REGION")),
		Credentials: credentials.NewStaticCredentials(
			viper.GetString("AWS_ACCESS_KEY"),
			viper.GetString("AWS_SECRET_KEY"),
			"",
		),
	})
}

// UploadImage stores image bytes in the public media bucket and
// returns the object's public URL. Callers own key construction; keys
// are namespaced by upload use case.
func UploadImage(content []byte, key, contentType string) (string, error) {
	bucketName := viper.GetString("S3_MEDIA_BUCKET")
	region := viper.GetString("AWS_REGION")

	sess, err := newSession()
	if err != nil {
		return "", fmt.Errorf("create AWS session: %w", err)
	}
	s3Client := s3.New(sess)

	_, err = s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucketName, region, key), nil
}

// DeleteObject removes a stored media object. Used when an upload is
// superseded before the owning post is saved.
func DeleteObject(key string) error {
	sess, err := newSession()
	if err != nil {
		return fmt.Errorf("create AWS session: %w", err)
	}
	s3Client := s3.New(sess)

	_, err = s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(viper.GetString("S3_MEDIA_BUCKET")),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete from S3: %w", err)
	}
	return nil
}
