package config

type KafkaConfig struct {
	Brokers         []string `mapstructure:"brokers" json:"brokers" yaml:"brokers"`
	Topics          Topics   `mapstructure:"topics" json:"topics" yaml:"topics"`
	ConsumerGroupID string   `mapstructure:"consumer_group_id" json:"consumer_group_id" yaml:"consumer_group_id"`
}

type Topics struct {
	CommentCreated  string `mapstructure:"commentCreated" yaml:"commentCreated"`   //  新评论提交主题
	CommentApproved string `mapstructure:"commentApproved" yaml:"commentApproved"` //  评论审核通过主题
	CommentDeleted  string `mapstructure:"commentDeleted" yaml:"commentDeleted"`   //  评论删除主题
}
