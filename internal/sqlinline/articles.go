package sqlinline

const QListQueuedArticles = `--sql fa96f08e-bac7-4f70-aeb7-5c73743bfa19
select id
from articles
where status = 'queued'
  and (cardinality($1::uuid[]) = 0 or team_id = any($1::uuid[]))
order by queued_at asc
limit $2;
`

const QSelectArticle = `--sql 48b0b074-2664-4700-a350-303a5266833c
select id, status, content, structured_content, outline_id, style_profile_id,
       target_audience_ids, writing_purpose, team_id, user_id,
       queued_at, created_at, updated_at
from articles
where id = $1;
`

const QClaimArticle = `--sql 675c5943-f706-4d9f-af72-500964b451c8
update articles
set status = 'processing', updated_at = now()
where id = $1 and status = 'queued';
`

const QMarkArticleDraft = `--sql 8b90c0f9-f649-4cc2-b79e-b3befa091e06
update articles
set status = 'draft',
    content = $2,
    structured_content = $3,
    updated_at = now()
where id = $1;
`

const QMarkArticleFailed = `--sql 82368317-cacd-43b8-a925-35bd4986ec12
update articles
set status = 'generation_failed',
    content = $2,
    updated_at = now()
where id = $1;
`

const QRequeueArticle = `--sql b80460f8-c715-489c-b7bd-dde4f4952bab
update articles
set status = 'queued',
    content = '',
    queued_at = now(),
    updated_at = now()
where id = $1 and status = 'generation_failed';
`
