package apitype

import "strconv"

type CategoryId int64
type ImageId int64
type UserId int64
type GoalId int64

const (
	NoCategory = CategoryId(-1)
	NoImage    = ImageId(-1)
	NoUser     = UserId(-1)
)

func (s CategoryId) String() string {
	return strconv.FormatInt(int64(s), 10)
}

func (s ImageId) String() string {
	return strconv.FormatInt(int64(s), 10)
}

func (s UserId) String() string {
	return strconv.FormatInt(int64(s), 10)
}

func ParseUserId(value string) (UserId, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return NoUser, err
	}
	return UserId(id), nil
}

func ParseCategoryId(value string) (CategoryId, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return NoCategory, err
	}
	return CategoryId(id), nil
}

func ParseImageId(value string) (ImageId, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return NoImage, err
	}
	return ImageId(id), nil
}
