package s3

import (
	"fmt"
	"net/url"
	"strings"
)

// AwsS3Bucket identifies the staging area used for s3 loads.
type AwsS3Bucket struct {
	Name   string `errorTxt:"bucket name" mandatory:"yes"`
	Prefix string `errorTxt:"bucket prefix"`
	Region string `errorTxt:"bucket region"`
}

// ParseDSN expects bucketPrefix to be of the form s3://<bucket>[/<prefix>]
// It returns an AwsS3Bucket populated with the components of bucketPrefix and the supplied region.
// If there is a parsing error it returns an error.
// The region may be empty.
func ParseDSN(bucketPrefix string, region string) (retval AwsS3Bucket, err error) {
	expectedScheme := "s3"
	s3url, err := url.Parse(bucketPrefix)
	if err != nil {
		return retval, fmt.Errorf("error parsing S3 URL: %v", err)
	}
	if s3url.Scheme != expectedScheme {
		return retval, fmt.Errorf("expected S3 URL scheme %q but got %q", expectedScheme, s3url.Scheme)
	}
	if s3url.Host == "" {
		return retval, fmt.Errorf("bucket name missing from S3 URL %q", bucketPrefix)
	}
	retval.Name = s3url.Host
	retval.Prefix = strings.Trim(s3url.Path, "/")
	retval.Region = region
	return retval, nil
}

// NewClient returns a BasicClient for the bucket.
func (d AwsS3Bucket) NewClient() (BasicClient, error) {
	return NewBasicClient(d.Name, d.Region, d.Prefix)
}
